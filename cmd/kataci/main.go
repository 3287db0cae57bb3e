/*
Copyright © 2025 Kata Containers community
SPDX-License-Identifier: Apache-2.0
*/
package main

import (
	"github.com/kata-containers/kataci/pkg/cli"
)

func main() {
	cli.Execute()
}
