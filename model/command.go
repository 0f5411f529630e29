package model

// Command is a named shell command line stored in the project file.
type Command struct {
	Name string  `json:"name"`
	Cmd  string  `json:"cmd"`
	Desc *string `json:"desc"`
}

// Description returns the description or "" when none is set.
func (c Command) Description() string {
	if c.Desc == nil {
		return ""
	}
	return *c.Desc
}
