//go:build js && wasm

package main

import (
	"errors"
	"syscall/js"

	"github.com/katpally123/pxt-phoenix/pkg/pipeline"
	"github.com/katpally123/pxt-phoenix/pkg/report"
)

// NOTE: Nothing is kept between calls. Each call loads, reconciles and
// aggregates its own inputs, so concurrent workers can share one instance.

// buildAll handles the headcountBuildAll JS function call.
// args[0] = Array of {name: string, data: Uint8Array}
// args[1] = string (settings JSON or YAML; empty uses the default labels)
// args[2] = string (target date, optional)
// args[3] = boolean (strict marketplace acceptance, optional)
// Returns: JSON string of the full result, or {"error": ...} for bad arguments.
func buildAll(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return pipeline.ErrorJSON(errors.New("headcountBuildAll requires at least 1 argument: files array"))
	}

	files, err := readFiles(args[0])
	if err != nil {
		return pipeline.ErrorJSON(err)
	}

	settings := report.DefaultSettings()
	if len(args) > 1 && args[1].Type() == js.TypeString && args[1].String() != "" {
		settings, err = report.LoadSettings([]byte(args[1].String()), "")
		if err != nil {
			return pipeline.ErrorJSON(err)
		}
	}

	targetDate := ""
	if len(args) > 2 && args[2].Type() == js.TypeString {
		targetDate = args[2].String()
	}

	var opts []pipeline.Option
	if len(args) > 3 && args[3].Type() == js.TypeBoolean {
		opts = append(opts, pipeline.WithStrictMarketplace(args[3].Bool()))
	}

	return pipeline.SerializeResult(pipeline.BuildAll(files, settings, targetDate, opts...))
}

func readFiles(arr js.Value) ([]pipeline.File, error) {
	if arr.Type() != js.TypeObject || arr.Get("length").Type() != js.TypeNumber {
		return nil, errors.New("files must be an array of {name, data}")
	}

	n := arr.Get("length").Int()
	files := make([]pipeline.File, 0, n)
	for i := 0; i < n; i++ {
		item := arr.Index(i)
		data := item.Get("data")
		if data.Type() != js.TypeObject {
			return nil, errors.New("file data must be a Uint8Array")
		}
		buf := make([]byte, data.Get("length").Int())
		js.CopyBytesToGo(buf, data)
		files = append(files, pipeline.File{Name: item.Get("name").String(), Data: buf})
	}
	return files, nil
}

func main() {
	js.Global().Set("headcountBuildAll", js.FuncOf(buildAll))

	// Block forever: the WASM module stays alive
	select {}
}
