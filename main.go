package main

import "github.com/Josh-Willhite/jira-sprint-stats/cmd"

func main() {
	cmd.Execute()
}
