package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type GridInput struct {
	Title              string             `yaml:"Title"`
	GridKind           string             `yaml:"GridKind"` // R, RZ, RL or RLZ
	Radial             AxisInput          `yaml:"Radial"`
	Vertical           AxisInput          `yaml:"Vertical"` // RZ and RLZ only
	MinAzimuthalPoints int                `yaml:"MinAzimuthalPoints"`
	AzimuthalLq        float64            `yaml:"AzimuthalLq"`
	RingScaling        bool               `yaml:"RingScaling"`
	BCs                map[string]BCInput `yaml:"BCs"` // Key is axis edge: RadialLeft, RadialRight, VerticalLeft, VerticalRight
}

type AxisInput struct {
	Xmin     float64 `yaml:"Xmin"`
	Xmax     float64 `yaml:"Xmax"`
	NumCells int     `yaml:"NumCells"`
	Lq       float64 `yaml:"Lq"`
}

type BCInput struct {
	Type  string  `yaml:"Type"` // Homogeneous0, Robin1, Robin2, Homogeneous3, Periodic
	Alpha float64 `yaml:"Alpha"`
	Beta  float64 `yaml:"Beta"`
}

func (gi *GridInput) Parse(data []byte) error {
	return yaml.Unmarshal(data, gi)
}

func (gi *GridInput) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", gi.Title)
	fmt.Printf("[%s]\t\t\t= Grid Kind\n", gi.GridKind)
	fmt.Printf("[%g,%g] / %d\t\t= Radial domain / cells\n",
		gi.Radial.Xmin, gi.Radial.Xmax, gi.Radial.NumCells)
	fmt.Printf("%8.5f\t\t= Radial Lq\n", gi.Radial.Lq)
	if gi.Vertical.NumCells != 0 {
		fmt.Printf("[%g,%g] / %d\t\t= Vertical domain / cells\n",
			gi.Vertical.Xmin, gi.Vertical.Xmax, gi.Vertical.NumCells)
		fmt.Printf("%8.5f\t\t= Vertical Lq\n", gi.Vertical.Lq)
	}
	if gi.MinAzimuthalPoints != 0 {
		fmt.Printf("[%d]\t\t\t= Min Azimuthal Points (ring scaling: %v)\n",
			gi.MinAzimuthalPoints, gi.RingScaling)
	}
	keys := make([]string, len(gi.BCs))
	i := 0
	for k := range gi.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, gi.BCs[key])
	}
}
