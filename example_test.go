package basic_test

import (
	"fmt"

	"github.com/zephyrtronium/basic"
)

func ExampleEvalString() {
	r, err := basic.EvalString("(1+1) + 2 * (3^2)")
	fmt.Println(r, err)
	r, err = basic.EvalString("1/0")
	fmt.Println(r, err)
	_, err = basic.EvalString("-(1+2)")
	fmt.Println(err)

	// Output:
	// 20 <nil>
	// +Inf <nil>
	// 2: expected number, found "("
}

func ExampleParseString() {
	root, _ := basic.ParseString("(1+1) + 2 * -3^2")
	fmt.Println(root)

	// Output:
	// ([1 + 1] + [2 * -3^2])
}

func ExampleContext() {
	ctx := basic.NewContext(basic.Prec(128))
	root, _ := basic.ParseString("2/3")
	fmt.Println(ctx.Eval(root).Text('g', 30))

	// Output:
	// 0.666666666666666666666666666667
}
