package app

import "fmt"

type BackpressureAction int

const (
	DropFrame BackpressureAction = iota
	Disconnect
)

// Policy decides what happens to a peer whose send queue is full.
type Policy interface {
	OnBackPressure() BackpressureAction
}

type DropPolicy struct{}

func (DropPolicy) OnBackPressure() BackpressureAction { return DropFrame }

type DisconnectPolicy struct{}

func (DisconnectPolicy) OnBackPressure() BackpressureAction { return Disconnect }

// PolicyByName maps the slow_consumer config value to a Policy.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "drop":
		return DropPolicy{}, nil
	case "disconnect":
		return DisconnectPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown slow consumer policy %q", name)
	}
}
