package config

import (
	"fmt"
	"strings"
)

type Operations int

const (
	Insert Operations = 1 << iota
	Update
)

const AllOperations = Insert | Update

func Ops(ops ...string) (Operations, error) {
	var o Operations
	err := o.Add(ops...)
	return o, err
}

func (o *Operations) Set(ops Operations)             { *o |= ops }
func (o *Operations) Clear(ops Operations)           { *o &= ^ops }
func (o Operations) IsSupported(ops Operations) bool { return o&ops != 0 }

func (o *Operations) Add(ops ...string) error {
	for _, op := range ops {
		switch strings.TrimSpace(op) {
		case "Insert":
			o.Set(Insert)
		case "Update":
			o.Set(Update)
		case "":
		default:
			return fmt.Errorf("invalid operation: %s", op)
		}
	}
	return nil
}

func (o Operations) String() string {
	names := make([]string, 0, 2)
	if o.IsSupported(Insert) {
		names = append(names, "Insert")
	}
	if o.IsSupported(Update) {
		names = append(names, "Update")
	}
	return strings.Join(names, ",")
}
