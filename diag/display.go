package diag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// Color styles mirror the teacher's banner palette: green for success,
// yellow for warnings, red for errors.
var (
	successFG = pterm.FgLightGreen
	successBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnFG    = pterm.FgYellow
	warnBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorFG   = pterm.FgRed
	errorBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoFG    = successFG
)

// Render prints a single diagnostic in the banner + code-frame style the
// teacher uses for compile errors: a "-- Category Error --- file" banner
// followed by the message and, when the source manager can resolve the
// location, the offending line with a caret underline.
func Render(d Diagnostic, sm SourceManager) {
	printBanner(d, sm)
	fmt.Println(d.Message)

	for _, note := range d.Notes {
		if note == "" {
			continue
		}
		fmt.Println("  " + note)
	}

	if n := len(d.Notes); n > 0 {
		fmt.Printf("  (reported %d times)\n", n+1)
	}

	if sm != nil && d.Location.IsValid() {
		printCodeFrame(d, sm)
	}
}

func printBanner(d Diagnostic, sm SourceManager) {
	fmt.Print("\n-- ")
	kind := d.Category.String()
	kindLen := len(kind)
	if d.isError() {
		errorBG.Print(kind + " Error")
		kindLen += 7
	} else {
		warnBG.Print(kind + " Warning")
		kindLen += 9
	}
	fmt.Print(" ")

	fileName := ""
	if sm != nil && d.Location.IsValid() {
		fileName = sm.Resolve(d.Location).File
	}

	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}
	dashCount := bannerLen - len(fileName) - kindLen - 1
	if dashCount < 0 {
		dashCount = 0
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	infoFG.Println(fileName)
}

func printCodeFrame(d Diagnostic, sm SourceManager) {
	pos := sm.Resolve(d.Location)
	line, ok := sm.Line(d.Location, pos.Line)
	if !ok {
		return
	}

	fmt.Println()

	width := len(strconv.Itoa(pos.Line)) + 1
	fmtStr := "%-" + strconv.Itoa(width) + "v"

	infoFG.Print(fmt.Sprintf(fmtStr, pos.Line))
	fmt.Print("|  ")
	fmt.Println(line)

	fmt.Print(strings.Repeat(" ", width), "|  ")
	col := pos.Col
	if col < 0 {
		col = 0
	}
	fmt.Print(strings.Repeat(" ", col))
	errorFG.Println("^")
}

// RenderAll renders a full diagnostic list in order, followed by a summary
// line, mirroring the teacher's displayCompilationFinished.
func RenderAll(ds []Diagnostic, sm SourceManager) {
	errs, warns := 0, 0
	for _, d := range ds {
		Render(d, sm)
		if d.isError() {
			errs++
		} else {
			warns++
		}
	}

	fmt.Print("\n")
	if errs == 0 {
		successFG.Print("All done! ")
	} else {
		errorFG.Print("Oh no! ")
	}
	fmt.Printf("(%d error(s), %d warning(s))\n", errs, warns)
}

// PrintInfo prints a standalone informational banner for messages not tied
// to a diagnostic.
func PrintInfo(tag, msg string) {
	successBG.Print(tag)
	infoFG.Println(" " + msg)
}

// PrintError prints a standalone error banner for failures that occur
// outside of the diagnostic bag entirely (bad CLI usage, I/O failure).
func PrintError(tag string, err error) {
	errorBG.Print(tag)
	errorFG.Println(" " + err.Error())
}
