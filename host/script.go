// Package host drives the wrapper the way a host processor would: it writes
// the command registers, polls STATUS and acknowledges interrupts.
package host

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/sumpaxi/wrapper/opcode"
)

// ErrEmptyScript is returned for a script without steps.
var ErrEmptyScript = errors.New("script has no steps")

// Script is a list of commands read from YAML.
type Script struct {
	Timeout uint16 `yaml:"timeout"`
	IRQ     bool   `yaml:"irq"`
	Steps   []Step `yaml:"steps"`
}

// Step is one command of a script. Addr, if given, overrides Hub, Pod and
// Reg.
type Step struct {
	Cmd         string  `yaml:"cmd"`
	Hub         uint8   `yaml:"hub"`
	Pod         uint8   `yaml:"pod"`
	Reg         string  `yaml:"reg"`
	Addr        *uint32 `yaml:"addr"`
	Data        uint32  `yaml:"data"`
	Expect      *uint32 `yaml:"expect"`
	ExpectError bool    `yaml:"expect_error"`
	AbortAfter  uint64  `yaml:"abort_after"`
}

// Command is a resolved step.
type Command struct {
	Index       int
	Opcode      opcode.Opcode
	Address     opcode.Address
	Data        uint32
	Expect      *uint32
	ExpectError bool
	AbortAfter  uint64
}

// Name returns the opcode name, or its value if it has none.
func (c Command) Name() string {
	if e := opcode.Lookup(c.Opcode); e.Name != "" {
		return e.Name
	}

	return c.Opcode.String()
}

// LoadScript parses a YAML script.
func LoadScript(r io.Reader) (Script, error) {
	s := Script{}

	err := yaml.NewDecoder(r).Decode(&s)
	if err != nil {
		return s, fmt.Errorf("parsing script: %w", err)
	}

	if len(s.Steps) == 0 {
		return s, ErrEmptyScript
	}

	return s, nil
}

// Commands resolves the steps of a script.
func (s Script) Commands() ([]Command, error) {
	cmds := make([]Command, 0, len(s.Steps))

	for i, step := range s.Steps {
		c, err := step.resolve(i)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		cmds = append(cmds, c)
	}

	return cmds, nil
}

func (s Step) resolve(index int) (Command, error) {
	op, err := opcode.Parse(s.Cmd)
	if err != nil {
		return Command{}, err
	}

	c := Command{
		Index:       index,
		Opcode:      op,
		Data:        s.Data,
		Expect:      s.Expect,
		ExpectError: s.ExpectError,
		AbortAfter:  s.AbortAfter,
	}

	if s.Addr != nil {
		c.Address = opcode.Address(*s.Addr)
		return c, nil
	}

	var reg opcode.PodReg
	if s.Reg != "" {
		reg, err = opcode.ParsePodReg(s.Reg)
		if err != nil {
			return Command{}, err
		}
	}

	c.Address = opcode.MakeAddress(s.Hub, s.Pod, reg)

	return c, nil
}
