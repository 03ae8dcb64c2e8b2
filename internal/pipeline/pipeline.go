// Package pipeline runs the composition pipeline for one scene: every
// configured method (the baseline included) is simulated, recomposed and
// rendered through the same code path.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"sen2compare/internal/compose"
	"sen2compare/internal/raster"
	"sen2compare/internal/simulate"
)

// Result holds all composition products of one method for one scene.
type Result struct {
	Method   simulate.Method
	Products []*compose.Product
}

// RequiredBands returns the union of all band codes the given compositions
// reference, in first-seen order.
func RequiredBands(specs []compose.Spec) []string {
	var codes []string
	seen := map[string]bool{}
	for _, spec := range specs {
		for _, code := range spec.Bands {
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
	}
	return codes
}

// RunMethod simulates every required band of the raster with the method's
// parameters. All output bands share the method's scale factor and therefore
// the same dimensions.
func RunMethod(m simulate.Method, raw *raster.Raster, required []string) (map[string]*raster.Band, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	simulated := make(map[string]*raster.Band, len(required))
	for _, code := range required {
		band := raw.Band(code)
		if band == nil {
			return nil, &compose.MissingBandError{Code: code}
		}
		if m.IsIdentity() {
			// the raster is immutable, the baseline can serve its bands as-is
			simulated[code] = band
			continue
		}
		out, err := simulate.Simulate(band, m.Factor, m.Sharpen)
		if err != nil {
			return nil, fmt.Errorf("method %s, band %s: %w", m.Name, code, err)
		}
		simulated[code] = out
	}
	return simulated, nil
}

var sem = semaphore.NewWeighted(int64(runtime.NumCPU()))

// Run computes every composition for every method. Methods are independent of
// each other, so they run concurrently; results come back in the order the
// methods were supplied.
func Run(raw *raster.Raster, specs []compose.Spec, methods []simulate.Method) ([]Result, error) {
	results := make([]Result, len(methods))
	errs := make([]error, len(methods))

	wg := sync.WaitGroup{}
	for i, method := range methods {
		wg.Add(1)
		go func(i int, method simulate.Method) {
			defer wg.Done()

			sem.Acquire(context.Background(), 1)
			defer sem.Release(1)

			results[i], errs[i] = runOne(raw, specs, method)
		}(i, method)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func runOne(raw *raster.Raster, specs []compose.Spec, method simulate.Method) (Result, error) {
	bands, err := RunMethod(method, raw, RequiredBands(specs))
	if err != nil {
		return Result{}, err
	}

	result := Result{Method: method, Products: make([]*compose.Product, len(specs))}
	for i, spec := range specs {
		product, err := compose.Compute(spec, bands)
		if err != nil {
			return Result{}, fmt.Errorf("method %s, composition %s: %w", method.Name, spec.Name, err)
		}
		result.Products[i] = product
	}
	return result, nil
}
