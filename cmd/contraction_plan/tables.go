package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/ogauthe/optimize-contraction/abstract"
	"github.com/ogauthe/optimize-contraction/network"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)

	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

func newPlainTable(withHeader bool) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if withHeader && row == 1 {
				s = headerRowStyle
				return
			}
			switch {
			case row%2 == 0:
				s = oddRowStyle
			default:
				s = evenRowStyle
			}
			if col == 0 {
				s = s.Align(lipgloss.Right)
			} else {
				s = s.Align(lipgloss.Left)
			}
			return
		})
}

func legsString(legs []abstract.Leg) string {
	parts := make([]string, len(legs))
	for i, leg := range legs {
		parts[i] = strconv.Itoa(int(leg))
	}
	return strings.Join(parts, ",")
}

func printSteps(n *network.Network) {
	fmt.Println(titleStyle.Render("Steps"))
	table := newPlainTable(true)
	table.Row("#", "Left", "Right", "Legs", "Result", "Shape", "Cost", "Live Elements")
	for i, step := range n.Steps() {
		table.Row(
			strconv.Itoa(i+1),
			step.LHS,
			step.RHS,
			legsString(step.Legs),
			step.Result.Name(),
			fmt.Sprintf("%v", step.Result.Shape()),
			humanize.Comma(int64(step.Cost)),
			humanize.Comma(int64(step.Memory)),
		)
	}
	fmt.Println(table.Render())
}

func printSummary(planPath string, plan network.Plan, n *network.Network, dtype dtypes.DType) {
	fmt.Println(titleStyle.Render("Summary"))
	table := newPlainTable(false)
	table.Row("plan", planPath)
	table.Row("# tensors", humanize.Comma(int64(len(plan.Tensors))))
	table.Row("# steps", humanize.Comma(int64(len(plan.Sequence))))
	if result, err := n.Result(); err == nil {
		table.Row("result", result.Name())
		table.Row("result shape", fmt.Sprintf("%v", result.Shape()))
		table.Row("result legs", legsString(result.Legs()))
	} else {
		// Incomplete plan: the frontier was not reduced to one tensor.
		table.Row("remaining", n.String())
	}
	table.Row("total cpu", humanize.Comma(int64(n.CPU())))
	table.Row("peak elements", humanize.Comma(int64(n.PeakMemory())))
	table.Row(fmt.Sprintf("peak bytes (%s)", dtype), humanize.Bytes(uint64(n.MemoryBytes(dtype))))
	fmt.Println(table.Render())
}
