package styles

import (
	"errors"
	"fmt"

	"github.com/diwise/api-datacubes/internal/pkg/domain"
	"golang.org/x/exp/slices"
)

// ErrUnknownVariable is returned when a style references a variable
// that the dataset it is applied to does not contain. Styles and
// datasets are independently loadable, so this is only detectable at
// resolve time.
var ErrUnknownVariable = errors.New("unknown variable")

// ResolvedStyle is ready for a downstream rendering collaborator:
// every referenced variable is known to exist and every value range is
// strictly increasing.
type ResolvedStyle struct {
	Identifier    string                     `json:"id"`
	ColorMappings map[string]ResolvedMapping `json:"colorMappings"`
}

type ResolvedMapping struct {
	ColorBar   string       `json:"colorBar,omitempty"`
	ColorFile  string       `json:"colorFile,omitempty"`
	ValueRange *[2]float64  `json:"valueRange,omitempty"`
	RGB        *ResolvedRGB `json:"rgb,omitempty"`
}

type ResolvedRGB struct {
	Red   ResolvedChannel `json:"red"`
	Green ResolvedChannel `json:"green"`
	Blue  ResolvedChannel `json:"blue"`
}

type ResolvedChannel struct {
	Variable   string     `json:"variable"`
	ValueRange [2]float64 `json:"valueRange"`
}

// Resolve validates a style against the variables available in a
// dataset. Two styles may map the same variable with different
// ranges, so there is nothing global to check here.
func Resolve(style domain.Style, availableVariables []string) (*ResolvedStyle, error) {
	resolved := &ResolvedStyle{
		Identifier:    style.Identifier,
		ColorMappings: map[string]ResolvedMapping{},
	}

	for varName, mapping := range style.ColorMappings {
		if mapping.RGB != nil {
			rgb := &ResolvedRGB{}
			for _, ch := range []struct {
				channel *domain.ChannelMapping
				target  *ResolvedChannel
			}{
				{&mapping.RGB.Red, &rgb.Red},
				{&mapping.RGB.Green, &rgb.Green},
				{&mapping.RGB.Blue, &rgb.Blue},
			} {
				if !slices.Contains(availableVariables, ch.channel.Variable) {
					return nil, fmt.Errorf("%w: %q in rgb mapping of style %q",
						ErrUnknownVariable, ch.channel.Variable, style.Identifier)
				}
				ch.target.Variable = ch.channel.Variable
				ch.target.ValueRange = [2]float64{
					ch.channel.ValueRange.Min,
					ch.channel.ValueRange.Max,
				}
			}
			resolved.ColorMappings[varName] = ResolvedMapping{RGB: rgb}
			continue
		}

		if !slices.Contains(availableVariables, varName) {
			return nil, fmt.Errorf("%w: %q in style %q",
				ErrUnknownVariable, varName, style.Identifier)
		}

		rm := ResolvedMapping{
			ColorBar:  mapping.ColorBar,
			ColorFile: mapping.ColorFile,
		}
		if mapping.ValueRange != nil {
			rm.ValueRange = &[2]float64{mapping.ValueRange.Min, mapping.ValueRange.Max}
		}
		resolved.ColorMappings[varName] = rm
	}

	return resolved, nil
}
