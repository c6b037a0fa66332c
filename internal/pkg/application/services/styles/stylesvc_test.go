package styles

import (
	"errors"
	"testing"

	"github.com/diwise/api-datacubes/internal/pkg/domain"
	"github.com/matryer/is"
)

func TestResolveMapsSimpleAndCompositeMappings(t *testing.T) {
	is := is.New(t)

	resolved, err := Resolve(testStyle(), []string{"conc_chl", "conc_tsm", "kd489"})
	is.NoErr(err)

	is.Equal(resolved.Identifier, "default")

	chl := resolved.ColorMappings["conc_chl"]
	is.Equal(chl.ColorBar, "plasma")
	is.Equal(*chl.ValueRange, [2]float64{0, 24})

	rgb := resolved.ColorMappings["rgb"].RGB
	is.True(rgb != nil)
	is.Equal(rgb.Red.Variable, "conc_chl")
	is.Equal(rgb.Blue.ValueRange, [2]float64{0, 6})
}

func TestResolveRejectsUnknownVariables(t *testing.T) {
	is := is.New(t)

	_, err := Resolve(testStyle(), []string{"conc_tsm", "kd489"})
	is.True(errors.Is(err, ErrUnknownVariable))
}

func TestResolveRejectsUnknownChannelVariables(t *testing.T) {
	is := is.New(t)

	// conc_chl is available for the simple mapping but kd489,
	// referenced by the blue channel, is not
	_, err := Resolve(testStyle(), []string{"conc_chl", "conc_tsm"})
	is.True(errors.Is(err, ErrUnknownVariable))
}

func testStyle() domain.Style {
	return domain.Style{
		Identifier: "default",
		ColorMappings: map[string]domain.ColorMapping{
			"conc_chl": {
				ColorBar:   "plasma",
				ValueRange: &domain.ValueRange{Min: 0, Max: 24},
			},
			"rgb": {
				RGB: &domain.RGBMapping{
					Red: domain.ChannelMapping{
						Variable:   "conc_chl",
						ValueRange: domain.ValueRange{Min: 0, Max: 24},
					},
					Green: domain.ChannelMapping{
						Variable:   "conc_tsm",
						ValueRange: domain.ValueRange{Min: 0, Max: 100},
					},
					Blue: domain.ChannelMapping{
						Variable:   "kd489",
						ValueRange: domain.ValueRange{Min: 0, Max: 6},
					},
				},
			},
		},
	}
}
