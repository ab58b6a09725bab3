package plan

import "strings"

// knownCommands is the allow-list used to decide whether free text looks
// like a shell command.
var knownCommands = []string{
	"ls", "cd", "mkdir", "rm", "cp", "mv", "cat", "grep", "find", "echo",
	"touch", "chmod", "chown", "ps", "top", "kill", "sudo", "apt", "yum",
	"pacman", "systemctl", "journalctl", "git", "curl", "wget", "ssh",
	"scp", "tar", "zip", "unzip", "df", "du", "free", "ping", "ifconfig",
	"ip", "netstat", "ss", "uname", "whoami", "who",
}

// LooksLikeCommand reports whether text starts with a known shell command.
// The match must be exact or followed by a space, so "lsx" does not match
// "ls" and "please ls" does not match at all.
func LooksLikeCommand(text string) bool {
	for _, cmd := range knownCommands {
		if text == cmd || strings.HasPrefix(text, cmd+" ") {
			return true
		}
	}
	return false
}
