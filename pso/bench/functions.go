package bench

import (
	"fmt"
	"math"
	"sort"

	"github.com/baldhumanity/pso-go/pso"
)

// Func is a named test objective together with its conventional search box.
type Func struct {
	Name string
	Fn   pso.ObjectiveFunc
	Lo   float64
	Hi   float64

	// Optimum is the known global minimum value.
	Optimum float64
}

// Functions maps names to the benchmark objectives so configuration can select them.
var Functions = map[string]Func{
	"sphere":     {Name: "sphere", Fn: Sphere, Lo: -100, Hi: 100},
	"rosenbrock": {Name: "rosenbrock", Fn: Rosenbrock, Lo: -2.048, Hi: 2.048},
	"griewank":   {Name: "griewank", Fn: Griewank, Lo: -600, Hi: 600},
	"rastrigin":  {Name: "rastrigin", Fn: Rastrigin, Lo: -5.12, Hi: 5.12},
	"ackley":     {Name: "ackley", Fn: Ackley, Lo: -32, Hi: 32},
}

// Lookup retrieves a benchmark function by name.
func Lookup(name string) (Func, error) {
	if fn, ok := Functions[name]; ok {
		return fn, nil
	}
	return Func{}, fmt.Errorf("unknown benchmark function: %s", name)
}

// Names lists the registered functions in alphabetical order.
func Names() []string {
	out := make([]string, 0, len(Functions))
	for k := range Functions {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Settings returns default solver settings over the function's search box.
func (f Func) Settings(dim int) (*pso.Settings, error) {
	return pso.NewSettings(dim, f.Lo, f.Hi)
}

// Sphere is the sum of squares.
func Sphere(x []float64, _ any) float64 {
	s := 0.0
	for _, v := range x {
		s += v * v
	}
	return s
}

// Rosenbrock is the banana valley. It needs at least two dimensions and
// returns 1e9 otherwise.
func Rosenbrock(x []float64, _ any) float64 {
	if len(x) < 2 {
		return 1e9
	}
	s := 0.0
	for i := 0; i < len(x)-1; i++ {
		a := x[i+1] - x[i]*x[i]
		b := 1.0 - x[i]
		s += 100.0*a*a + b*b
	}
	return s
}

// Griewank has many regularly spaced local minima.
func Griewank(x []float64, _ any) float64 {
	sum, prod := 0.0, 1.0
	for i, v := range x {
		sum += v * v
		prod *= math.Cos(v / math.Sqrt(float64(i)+1.0))
	}
	return sum/4000.0 - prod + 1.0
}

// Rastrigin is highly multimodal.
func Rastrigin(x []float64, _ any) float64 {
	s := 10.0 * float64(len(x))
	for _, v := range x {
		s += v*v - 10.0*math.Cos(2.0*math.Pi*v)
	}
	return s
}

// Ackley has a nearly flat outer region and a deep central hole.
func Ackley(x []float64, _ any) float64 {
	if len(x) == 0 {
		return 0
	}
	a, b, c := 20.0, 0.2, 2.0*math.Pi
	s1, s2 := 0.0, 0.0
	for _, v := range x {
		s1 += v * v
		s2 += math.Cos(c * v)
	}
	n := float64(len(x))
	return -a*math.Exp(-b*math.Sqrt(s1/n)) - math.Exp(s2/n) + a + math.E
}
