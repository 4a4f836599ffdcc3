package main

import (
	"log"

	"github.com/evanw/esbuild/pkg/api"
)

func main() {
	buildOpts := api.BuildOptions{
		EntryPointsAdvanced: []api.EntryPoint{
			{
				InputPath:  "cmd/web/frontend/index.js",
				OutputPath: "index",
			},
		},
		Outdir:            "cmd/web/assets/js",
		Bundle:            true,
		MinifyWhitespace:  true,
		MinifySyntax:      true,
		MinifyIdentifiers: true,
		Sourcemap:         api.SourceMapLinked,
		Platform:          api.PlatformBrowser,
		Format:            api.FormatESModule,
		Target:            api.ES2020,
		Write:             true,
	}
	result := api.Build(buildOpts)
	if len(result.Errors) != 0 {
		log.Fatalf("esbuild failed (%v)", result.Errors)
	}
	for _, w := range result.Warnings {
		log.Printf("esbuild: %s", w.Text)
	}
}
