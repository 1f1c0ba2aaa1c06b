// Package main demonstrates basic usage of the invertibility kernel.
//
// This example shows how a propagation layer consults the kernel: build a
// domain for the unknown operand, then ask whether an equation can still be
// satisfied before committing to a move.
package main

import (
	"fmt"
	"log"

	"github.com/gitrdm/gobitprop/pkg/bvprop"
)

func main() {
	fmt.Println("=== gobitprop Example ===")
	fmt.Println()

	// The unknown x has its top bit forced to 1.
	x, err := bvprop.NewDomainFromString("1xxx")
	if err != nil {
		log.Fatal(err)
	}

	t := bvprop.NewUint64(1, 1)
	s := bvprop.NewUint64(4, 4)

	// Is x < 4 still satisfiable? Not with x >= 8.
	fmt.Printf("x in %s, x < %s satisfiable: %v\n", x, s, bvprop.IsInvUltConst(x, t, s, 0))

	// Is 4 < x satisfiable? Any member qualifies.
	fmt.Printf("x in %s, %s < x satisfiable: %v\n", x, s, bvprop.IsInvUltConst(x, t, s, 1))

	// x + s = t is satisfiable iff t - s matches the fixed bits of x.
	target := bvprop.NewUint64(13, 4)
	fmt.Printf("x in %s, x + %s = %s satisfiable: %v\n",
		x, s, target, bvprop.IsInvAddConst(x, target, s, 0))
}
