// contraction_plan evaluates a tensor contraction plan without touching any
// numeric data: it loads a JSON plan (the tensors of a network and the
// sequence of leg groups to contract), checks that the legs are consistent,
// prices every pairwise contraction and reports cost and memory estimates.
//
// Usage:
//
//	contraction_plan [flags] plan.json
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/ogauthe/optimize-contraction/network"
)

var (
	flagSteps = flag.Bool("steps", false, "Display one row per contraction step, with its operands, "+
		"contracted legs, cost and live-memory estimate.")
	flagSummary = flag.Bool("summary", true, "Display a summary of the plan: result tensor, total cost "+
		"and peak memory.")
	flagDType = flag.String("dtype", "float64", "Element type used to convert memory estimates from "+
		"elements to bytes, e.g. float32, float64, complex128.")
	flagSVG = flag.String("svg", "", "Write an SVG profile of the evaluation (live elements and "+
		"cumulative cost per step) to this file.")
	flagValidateOnly = flag.Bool("validate_only", false, "Only check the plan tensors for leg "+
		"consistency, without evaluating the sequence.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		klog.Errorf("Missing contraction plan file to evaluate. See 'contraction_plan -help'.")
		os.Exit(1)
	}
	if len(args) > 1 {
		klog.Errorf("Too many arguments. See 'contraction_plan -help'.")
		os.Exit(1)
	}
	report(args[0])
}

func report(planPath string) {
	dtype, err := dtypes.DTypeString(*flagDType)
	if err != nil {
		klog.Errorf("Invalid -dtype=%q: %v", *flagDType, err)
		os.Exit(1)
	}

	plan := must.M1(network.LoadPlan(planPath))
	if *flagValidateOnly {
		n, err := plan.Build()
		if err != nil {
			klog.Errorf("Invalid contraction plan %q: %v", planPath, err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d tensors and %d sequence entries, legs are consistent.\n",
			planPath, n.NumTensors(), len(plan.Sequence))
		return
	}

	n, err := plan.Run()
	if err != nil {
		klog.Errorf("Contraction plan %q failed: %v", planPath, err)
		os.Exit(1)
	}

	if *flagSteps {
		printSteps(n)
	}
	if *flagSummary {
		printSummary(planPath, plan, n, dtype)
	}
	if *flagSVG != "" {
		must.M(writeProfile(*flagSVG, n))
	}
}
