// Package script replays recorded move lists against a game.
//
// A script is YAML:
//
//	black: ada
//	white: ben
//	moves:
//	  - {player: ada, from: [5, 2], to: [4, 3]}
//	  - {player: ben, from: [2, 1], to: [3, 0], expect: OutofTurn}
//	  - {player: ada, from: [4, 3], to: [2, 5], captures: 1}
package script

import (
	"fmt"
	"os"

	"Draughts/game/core"

	"gopkg.in/yaml.v3"
)

// Square is a [row, col] pair.
type Square core.Position

func (s *Square) UnmarshalYAML(n *yaml.Node) error {
	var rc []int
	if err := n.Decode(&rc); err != nil {
		return fmt.Errorf("line %d: square must be [row, col]: %w", n.Line, err)
	}
	if len(rc) != 2 {
		return fmt.Errorf("line %d: square must be [row, col], got %d values", n.Line, len(rc))
	}
	*s = Square{Row: rc[0], Col: rc[1]}
	return nil
}

func (s Square) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []int{s.Row, s.Col} {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v)})
	}
	return n, nil
}

type Step struct {
	Player string `yaml:"player"`
	From   Square `yaml:"from"`
	To     Square `yaml:"to"`
	// Expect is the rule violation kind the move must fail with.
	Expect   string `yaml:"expect,omitempty"`
	Captures *int   `yaml:"captures,omitempty"`
}

type Script struct {
	Black string `yaml:"black"`
	White string `yaml:"white"`
	Moves []Step `yaml:"moves"`
}

// Outcome is what happened to one step.
type Outcome struct {
	Step     int
	Captured int
	Kind     string
}

func Load(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s.Black == "" || s.White == "" {
		return nil, fmt.Errorf("script needs both black and white players")
	}
	for i, st := range s.Moves {
		if st.Expect != "" && core.ErrorForKind(st.Expect) == nil {
			return nil, fmt.Errorf("move %d: unknown expected kind %q", i+1, st.Expect)
		}
	}
	return &s, nil
}

// Marshal renders the script back to YAML.
func (s *Script) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// NewGame creates a game with the script's two players seated.
func (s *Script) NewGame(opts ...core.Option) (*core.Game, error) {
	g := core.NewGame(opts...)
	if _, err := g.CreatePlayer(s.Black, core.Black); err != nil {
		return nil, err
	}
	if _, err := g.CreatePlayer(s.White, core.White); err != nil {
		return nil, err
	}
	return g, nil
}

// Run plays every move on g and stops at the first move whose result differs
// from the script's expectation.
func (s *Script) Run(g *core.Game) ([]Outcome, error) {
	out := make([]Outcome, 0, len(s.Moves))
	for i, st := range s.Moves {
		n, err := g.PlayMove(st.Player, core.Position(st.From), core.Position(st.To))
		kind := core.KindOf(err)
		if err != nil && kind == "" {
			return out, err
		}
		out = append(out, Outcome{Step: i + 1, Captured: n, Kind: kind})

		where := fmt.Sprintf("move %d (%s %v -> %v)", i+1, st.Player, core.Position(st.From), core.Position(st.To))
		switch {
		case kind != st.Expect && st.Expect == "":
			return out, fmt.Errorf("%s: %w", where, err)
		case kind != st.Expect:
			return out, fmt.Errorf("%s: expected %s, got %q", where, st.Expect, kind)
		case st.Captures != nil && *st.Captures != n:
			return out, fmt.Errorf("%s: expected %d captures, got %d", where, *st.Captures, n)
		}
	}
	return out, nil
}
