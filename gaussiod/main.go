// Public domain.

package main

import "github.com/FusRoman/outfit/internal/iodprog"

func main() {
	iodprog.Main()
}
