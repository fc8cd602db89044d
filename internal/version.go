package internal

// Version is the current polyglot-keeper release version
const Version = "1.2.0"
