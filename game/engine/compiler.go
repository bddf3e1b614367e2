package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ActionKind tags an Action
type ActionKind string

const (
	ActionStart ActionKind = "start"
	ActionMove  ActionKind = "move"
)

// Action is one executable step of a script. Dir is only set for moves.
type Action struct {
	Kind ActionKind `json:"kind"`
	Dir  Direction  `json:"dir,omitempty"`
}

func (a Action) String() string {
	if a.Kind == ActionMove {
		return fmt.Sprintf("MOVE(%s)", strings.ToUpper(string(a.Dir)))
	}
	return strings.ToUpper(string(a.Kind))
}

// StartAction is the program entry marker
func StartAction() Action { return Action{Kind: ActionStart} }

// MoveAction moves the actor one cell
func MoveAction(dir Direction) Action { return Action{Kind: ActionMove, Dir: dir} }

// Block types understood by the compiler
const (
	BlockStart        = "start"
	BlockMoveForward  = "move_forward"
	BlockMoveBackward = "move_backward"
	BlockMoveUp       = "move_up"
	BlockMoveDown     = "move_down"
)

// blockTable is the only place block types are mapped to actions
var blockTable = map[string]Action{
	BlockStart:        StartAction(),
	BlockMoveForward:  MoveAction(Forward),
	BlockMoveBackward: MoveAction(Backward),
	BlockMoveUp:       MoveAction(Up),
	BlockMoveDown:     MoveAction(Down),
}

// Block is a node of the editor's block tree. Next chains the block that
// is attached below it.
type Block struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`
	Next *Block `json:"next,omitempty"`
}

// Program is an authored block program: an ordered list of top-level chains
type Program struct {
	Blocks []*Block `json:"blocks"`
}

// ActionScript is an ordered, immutable sequence of actions
type ActionScript struct {
	actions []Action
}

// NewActionScript copies actions into a script
func NewActionScript(actions ...Action) ActionScript {
	return ActionScript{actions: append([]Action(nil), actions...)}
}

// Len returns the number of actions
func (s ActionScript) Len() int { return len(s.actions) }

// At returns the action at index i
func (s ActionScript) At(i int) Action { return s.actions[i] }

// Actions returns a copy of the actions
func (s ActionScript) Actions() []Action {
	return append([]Action(nil), s.actions...)
}

// Equal reports whether both scripts hold the same actions in order
func (s ActionScript) Equal(other ActionScript) bool {
	if len(s.actions) != len(other.actions) {
		return false
	}
	for i := range s.actions {
		if s.actions[i] != other.actions[i] {
			return false
		}
	}
	return true
}

func (s ActionScript) String() string {
	parts := make([]string, len(s.actions))
	for i, a := range s.actions {
		parts[i] = a.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MarshalJSON encodes the script as a list of actions
func (s ActionScript) MarshalJSON() ([]byte, error) {
	if s.actions == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.actions)
}

// UnmarshalJSON decodes a list of actions
func (s *ActionScript) UnmarshalJSON(data []byte) error {
	var actions []Action
	if err := json.Unmarshal(data, &actions); err != nil {
		return err
	}
	s.actions = actions
	return nil
}

// Compile walks every top-level chain in program order and maps each block
// to its action. Unknown block types are skipped.
func Compile(program *Program) ActionScript {
	var actions []Action
	if program == nil {
		return ActionScript{}
	}
	for _, top := range program.Blocks {
		for b := top; b != nil; b = b.Next {
			if action, ok := blockTable[b.Type]; ok {
				actions = append(actions, action)
			}
		}
	}
	return ActionScript{actions: actions}
}

// ParseProgram builds a single-chain program from a whitespace or comma
// separated list of tokens such as "start down down forward". Tokens may be
// block types or direction names.
func ParseProgram(text string) (*Program, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	types := make([]string, 0, len(fields))
	for _, f := range fields {
		token := strings.ToLower(f)
		if token == BlockStart {
			types = append(types, BlockStart)
			continue
		}
		if _, ok := blockTable[token]; ok {
			types = append(types, token)
			continue
		}
		dir, err := ParseDirection(token)
		if err != nil {
			return nil, fmt.Errorf("unknown block %q: %w", f, err)
		}
		types = append(types, "move_"+string(dir))
	}

	return chain(types), nil
}

// ProgramFromDirections builds a program that starts and then moves in the
// given directions.
func ProgramFromDirections(dirs []Direction) *Program {
	types := make([]string, 0, len(dirs)+1)
	types = append(types, BlockStart)
	for _, d := range dirs {
		types = append(types, "move_"+string(d))
	}
	return chain(types)
}

func chain(types []string) *Program {
	if len(types) == 0 {
		return &Program{}
	}
	var head, tail *Block
	for _, t := range types {
		b := &Block{Type: t}
		if head == nil {
			head = b
		} else {
			tail.Next = b
		}
		tail = b
	}
	return &Program{Blocks: []*Block{head}}
}
