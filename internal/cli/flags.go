package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile      string
	Force        bool
	DryRun       bool
	Tracking     string
	Locales      []string
	SkipTrees    bool
	SkipMarkdown bool
	NoCache      bool

	// Provider flags
	Provider  string
	Model     string
	BatchSize int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Tracking:  "on",
		Provider:  "openai",
		BatchSize: 50,
	}
}
