/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/killallgit/pulsegrow-api/cmd"

// @title           PulseGrow API
// @version         1.0.0
// @description     Comment sentiment analytics for YouTube channels and videos
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/pulsegrow-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8000
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
