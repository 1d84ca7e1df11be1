// Command genhash prints the bcrypt hash to put in BESTSYSTEM_PASSWORD_HASH.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bestcell/bestsystem_backend/internal/utils"
)

func main() {
	password := strings.Join(os.Args[1:], " ")
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "no password given")
			os.Exit(1)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to hash password:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
