// Command terraform-provider-cognitoclients serves the cognitoclients Terraform provider, whose
// cognitoclients_client resource pushes OAuth settings to an existing Cognito app client and
// reconciles the user pool's custom domain on every apply.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hashicorp/terraform-plugin-framework/providerserver"

	provider "github.com/mikecbrant/cognito-userpool-clients/internal/terraform"
)

const registryAddress = "registry.terraform.io/mikecbrant/cognitoclients"

var (
	// Set via -ldflags in release
	version = "dev"
)

func main() {
	var debug bool
	flag.BoolVar(&debug, "debug", false, "run as a debuggable process and print TF_REATTACH_PROVIDERS for terraform")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "%s %s\n\nServes %s over plugin protocol 6. Terraform starts it; run it directly only with -debug.\n\n", os.Args[0], version, registryAddress)
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetPrefix("[cognitoclients] ")
	opts := providerserver.ServeOpts{
		Address:         registryAddress,
		Debug:           debug,
		ProtocolVersion: 6,
	}
	if err := providerserver.Serve(context.Background(), provider.New(version), opts); err != nil {
		log.Fatal(err)
	}
}
