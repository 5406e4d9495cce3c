// Command release-manifest writes the JSON manifest describing a release
// update artifact and the model files published on the project pages site.
package main

import "github.com/oshokin/release-manifest/cmd/release-manifest/cmd"

func main() {
	cmd.Execute()
}
