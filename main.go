/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/Umeshh27/Event-Driven-Analytics/cmd"

func main() {
	cmd.Execute()
}
