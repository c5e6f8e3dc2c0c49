package platform

import (
	"fmt"
	"strings"
)

func desktopFileName(entry AutostartEntry) string {
	return entry.slug() + ".desktop"
}

// buildDesktopEntry renders an XDG autostart entry.
func buildDesktopEntry(entry AutostartEntry) string {
	words := make([]string, 0, len(entry.Args)+1)
	words = append(words, quoteDesktopArg(entry.ExecPath))
	for _, arg := range entry.Args {
		words = append(words, quoteDesktopArg(arg))
	}

	return fmt.Sprintf(
		`[Desktop Entry]
Type=Application
Name=%s
Comment=Gentle break reminders
Exec=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`,
		entry.Name,
		strings.Join(words, " "),
	)
}

func quoteDesktopArg(arg string) string {
	if !strings.ContainsAny(arg, " \t\"'\\") || strings.HasPrefix(arg, `"`) {
		return arg
	}
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(arg)
	return `"` + escaped + `"`
}

func launchAgentLabel(entry AutostartEntry) string {
	return "com.touchgrass." + entry.slug()
}

func buildLaunchAgentPlist(label string, entry AutostartEntry) string {
	var arguments strings.Builder
	for _, arg := range append([]string{entry.ExecPath}, entry.Args...) {
		fmt.Fprintf(&arguments, "\t\t<string>%s</string>\n", xmlEscape(arg))
	}

	return fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
%s	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`,
		xmlEscape(label),
		arguments.String(),
	)
}

func xmlEscape(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(value)
}

// windowsRunCommand is the value stored under the Run registry key.
func windowsRunCommand(entry AutostartEntry) string {
	parts := []string{fmt.Sprintf(`"%s"`, strings.Trim(entry.ExecPath, `"`))}
	parts = append(parts, entry.Args...)
	return strings.Join(parts, " ")
}
