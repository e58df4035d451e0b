package diagram

import "fmt"

func ExampleDrawSummaryBox() {
	fmt.Print(DrawSummaryBox("CONFORME", []string{"Fv,Rd = 2292 N"}))
	// Output:
	//   ╔══════════════════╗
	//   ║  CONFORME        ║
	//   ╠══════════════════╣
	//   ║  Fv,Rd = 2292 N  ║
	//   ╚══════════════════╝
}
