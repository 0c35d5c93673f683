package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sanity-io/litter"

	"github.com/dsamoilenko/cmpy/internal/ast"
	"github.com/dsamoilenko/cmpy/internal/compiler"
	"github.com/dsamoilenko/cmpy/internal/compiler_errors"
)

func main() {
	dumpAst := flag.Bool("dump-ast", false, "print the parse tree and exit")
	astJSON := flag.String("ast-json", "", "write the parse tree as JSON to `file`")
	output := flag.String("o", "", "write generated Python to `file` instead of stdout")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: cmpy [flags] <source file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	fileName := flag.Arg(0)
	src, err := os.ReadFile(fileName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	result := compiler.Compile(fileName, src)
	if len(result.Errors) > 0 {
		compiler_errors.Print(os.Stderr, result.Errors)
		os.Exit(1)
	}

	if *dumpAst {
		litter.Dump(result.Ast)
		return
	}

	if *astJSON != "" {
		data, err := ast.EncodeJSON(result.Ast)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if err := os.WriteFile(*astJSON, data, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	py := compiler.Generate(result.Program)
	if *output == "" {
		fmt.Print(py)
		return
	}

	if err := os.WriteFile(*output, []byte(py), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
