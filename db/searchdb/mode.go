package searchdb

// Mode selects the matching strategy of a search.
type Mode string

const (
	// ModeFree matches loosely against the main name only.
	ModeFree Mode = "free"
	// ModeAccurate matches against every text field; a hit in any field counts.
	ModeAccurate Mode = "accurate"
	// ModePhrase matches the exact, ordered sequence of terms in the main name.
	ModePhrase Mode = "phrase"
)

var Modes = []Mode{ModeFree, ModeAccurate, ModePhrase}

func (m Mode) IsValid() bool {
	return m == ModeFree || m == ModeAccurate || m == ModePhrase
}

type Query struct {
	Text  string
	Mode  Mode
	Limit int
}
