// Package motion holds the named animation presets used by the booth pages.
// Presets are plain data, rendered as JSON for the client-side animation library.
package motion

import (
	"fmt"
	"maps"
	"slices"
)

// standardEase is the cubic-bezier shared by the tween presets.
var standardEase = []float64{0.25, 0.46, 0.45, 0.94}

// RepeatForever is the Repeat value of endless animations.
const RepeatForever = -1

// Transition describes timing of a state change, either a tween (Duration, Ease)
// or a spring (Type "spring", Stiffness, Damping).
type Transition struct {
	Type             string    `json:"type,omitempty"`
	Duration         float64   `json:"duration,omitempty"`
	Ease             []float64 `json:"ease,omitempty"`
	EaseName         string    `json:"easeName,omitempty"`
	Stiffness        float64   `json:"stiffness,omitempty"`
	Damping          float64   `json:"damping,omitempty"`
	Times            []float64 `json:"times,omitempty"`
	Repeat           int       `json:"repeat,omitempty"` // RepeatForever for endless
	StaggerChildren  float64   `json:"staggerChildren,omitempty"`
	DelayChildren    float64   `json:"delayChildren,omitempty"`
	StaggerDirection int       `json:"staggerDirection,omitempty"`
}

// State is a single animation target, property name to value.
// Keyframes are []float64, the optional "transition" key holds a Transition.
type State map[string]any

// Variants maps a state name (initial, animate, hover, exit...) to its target.
type Variants map[string]State

// Named transitions.
var (
	Fast         = Transition{Duration: 0.15, Ease: standardEase}
	Normal       = Transition{Duration: 0.25, Ease: standardEase}
	Slow         = Transition{Duration: 0.4, Ease: standardEase}
	Spring       = Transition{Type: "spring", Stiffness: 400, Damping: 30}
	SpringBouncy = Transition{Type: "spring", Stiffness: 300, Damping: 20}
	SpringGentle = Transition{Type: "spring", Stiffness: 200, Damping: 25}
	Exit         = Transition{Duration: 0.2, Ease: standardEase}
	Press        = Transition{Duration: 0.1}
)

// Transitions lists named transitions by name.
var Transitions = map[string]Transition{
	"fast":         Fast,
	"normal":       Normal,
	"slow":         Slow,
	"spring":       Spring,
	"springBouncy": SpringBouncy,
	"springGentle": SpringGentle,
	"exit":         Exit,
}

var presets = map[string]Variants{
	"page": {
		"initial": {"opacity": 0, "y": 20},
		"animate": {"opacity": 1, "y": 0, "transition": Slow},
		"exit":    {"opacity": 0, "y": -10, "transition": Exit},
	},
	"staggerContainer": {
		"hidden": {"opacity": 0},
		"show":   {"opacity": 1, "transition": Transition{StaggerChildren: 0.1, DelayChildren: 0.1}},
		"exit":   {"opacity": 0, "transition": Transition{StaggerChildren: 0.05, StaggerDirection: -1}},
	},
	"staggerItem": {
		"hidden": {"opacity": 0, "y": 20},
		"show":   {"opacity": 1, "y": 0, "transition": Spring},
		"exit":   {"opacity": 0, "y": -10, "transition": Exit},
	},
	"card": {
		"initial":  {"opacity": 0, "y": 20, "scale": 0.95},
		"animate":  {"opacity": 1, "y": 0, "scale": 1, "transition": Spring},
		"hover":    {"y": -4, "boxShadow": "0 8px 30px rgba(0, 0, 0, 0.12)", "transition": Fast},
		"tap":      {"scale": 0.98, "transition": Press},
		"selected": {"scale": 1.02, "boxShadow": "0 8px 30px rgba(0, 0, 0, 0.15)", "transition": Spring},
	},
	"button": {
		"initial": {"opacity": 0, "y": 10},
		"animate": {"opacity": 1, "y": 0, "transition": Spring},
		"hover":   {"y": -2, "boxShadow": "0 4px 12px rgba(0, 0, 0, 0.15)", "transition": Fast},
		"tap":     {"scale": 0.97, "transition": Press},
	},
	"themeToggle": {
		"hover": {"scale": 1.1},
		"tap":   {"scale": 0.9},
		"light": {"rotate": 0, "scale": []float64{1, 0.8, 1}, "transition": Spring},
		"dark":  {"rotate": 180, "scale": []float64{1, 0.8, 1}, "transition": Spring},
	},
	"modalOverlay": {
		"hidden":  {"opacity": 0},
		"visible": {"opacity": 1, "transition": Transition{Duration: 0.2}},
		"exit":    {"opacity": 0, "transition": Transition{Duration: 0.15}},
	},
	"modalContent": {
		"hidden":  {"opacity": 0, "scale": 0.95, "y": 20},
		"visible": {"opacity": 1, "scale": 1, "y": 0, "transition": SpringBouncy},
		"exit":    {"opacity": 0, "scale": 0.95, "y": 10, "transition": Exit},
	},
	"countdown": {
		"initial": {"scale": 1.5, "opacity": 0},
		"animate": {"scale": 1, "opacity": 1, "transition": SpringBouncy},
		"exit":    {"scale": 0.8, "opacity": 0, "transition": Transition{Duration: 0.2}},
	},
	"flash": {
		"hidden":  {"opacity": 0},
		"visible": {"opacity": []float64{0, 0.8, 0}, "transition": Transition{Duration: 0.2, Times: []float64{0, 0.3, 1}, EaseName: "easeOut"}},
	},
	"galleryItem": {
		"hidden": {"opacity": 0, "scale": 0.9},
		"show":   {"opacity": 1, "scale": 1, "transition": Spring},
		"hover":  {"y": -4, "boxShadow": "0 12px 40px rgba(0, 0, 0, 0.15)", "transition": Fast},
		"tap":    {"scale": 0.98, "transition": Press},
		"exit":   {"opacity": 0, "scale": 0.9, "transition": Exit},
	},
	"toast": {
		"hidden":  {"opacity": 0, "y": -20, "scale": 0.95},
		"visible": {"opacity": 1, "y": 0, "scale": 1, "transition": SpringBouncy},
		"exit":    {"opacity": 0, "y": -20, "scale": 0.95, "transition": Exit},
	},
	"scrollReveal": {
		"hidden":  {"opacity": 0, "y": 40},
		"visible": {"opacity": 1, "y": 0, "transition": Transition{Duration: 0.5, Ease: standardEase}},
	},
	"thumbnail": {
		"initial":  {"opacity": 0, "scale": 0.9},
		"animate":  {"opacity": 1, "scale": 1, "transition": Spring},
		"hover":    {"scale": 1.05, "transition": Fast},
		"tap":      {"scale": 0.95, "transition": Press},
		"selected": {"scale": 1.05, "boxShadow": "0 0 0 2px var(--text-primary)", "transition": Spring},
	},
	"recordingPulse": {
		"animate": {"scale": []float64{1, 1.2, 1}, "opacity": []float64{1, 0.7, 1},
			"transition": Transition{Duration: 1, Repeat: RepeatForever, EaseName: "easeInOut"}},
	},
	"errorShake": {
		"shake": {"x": []float64{0, -4, 4, -4, 4, 0}, "transition": Transition{Duration: 0.4}},
	},
	"checkmark": {
		"hidden":  {"pathLength": 0, "opacity": 0},
		"visible": {"pathLength": 1, "opacity": 1, "transition": Transition{Duration: 0.3, EaseName: "easeOut"}},
	},
}

// Lookup returns a copy of the named variants.
func Lookup(name string) (Variants, error) {
	v, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown motion preset %q", name)
	}
	return clone(v), nil
}

// Names returns all preset names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(presets))
}

// All returns a copy of every preset, keyed by name.
func All() map[string]Variants {
	res := make(map[string]Variants, len(presets))
	for name, v := range presets {
		res[name] = clone(v)
	}
	return res
}

// StepEnter is the entering state of a direction-aware wizard step,
// positive direction slides in from the right.
func StepEnter(direction int) State {
	x := -100
	if direction > 0 {
		x = 100
	}
	return State{"x": x, "opacity": 0}
}

// StepCenter is the resting state of a wizard step.
func StepCenter() State {
	return State{"x": 0, "opacity": 1, "transition": Spring}
}

// StepExit is the leaving state of a wizard step, the mirror of StepEnter.
func StepExit(direction int) State {
	x := 100
	if direction > 0 {
		x = -100
	}
	return State{"x": x, "opacity": 0, "transition": Exit}
}

// Step is the full set of wizard step states for one direction,
// keyed enter, center and exit.
func Step(direction int) Variants {
	return Variants{"enter": StepEnter(direction), "center": StepCenter(), "exit": StepExit(direction)}
}

// Reduced returns a copy of v with initial/animate/exit replaced by near-instant fades,
// for clients asking for reduced motion. Other states are kept as is.
func Reduced(v Variants) Variants {
	res := clone(v)
	res["initial"] = State{"opacity": 0}
	res["animate"] = State{"opacity": 1, "transition": Transition{Duration: 0.01}}
	res["exit"] = State{"opacity": 0, "transition": Transition{Duration: 0.01}}
	return res
}

// DragConfig is the horizontal drag setup of the gallery carousel.
type DragConfig struct {
	Drag           string         `json:"drag"`
	DragElastic    float64        `json:"dragElastic"`
	DragTransition DragTransition `json:"dragTransition"`
}

// DragTransition is the bounce applied when a drag is released.
type DragTransition struct {
	BounceStiffness float64 `json:"bounceStiffness"`
	BounceDamping   float64 `json:"bounceDamping"`
}

// CarouselDrag is the carousel drag configuration.
var CarouselDrag = DragConfig{
	Drag:           "x",
	DragElastic:    0.2,
	DragTransition: DragTransition{BounceStiffness: 300, BounceDamping: 30},
}

// clone copies variants and their states, values inside states are shared.
func clone(v Variants) Variants {
	res := make(Variants, len(v))
	for name, st := range v {
		res[name] = maps.Clone(st)
	}
	return res
}
