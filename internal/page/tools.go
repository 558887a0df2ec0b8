package page

import "fmt"

const (
	Prompt = "root@cyberjinn:~$"
	Cursor = "_"

	// DefaultTool runs for unknown tool ids.
	DefaultTool = "terminal"
)

// ExecuteMessage is shown after the execute flash.
const ExecuteMessage = "SYSTEM EXECUTED\n\nAll protocols initialized.\nMatrix connection established.\n\nCYBER JINN is online."

// Tool is one hacker-lab card and its canned terminal transcript.
type Tool struct {
	ID      string
	Name    string
	Command string
	Output  []string
}

var tools = []Tool{
	{
		ID: "terminal", Name: "Terminal", Command: "access mainframe",
		Output: []string{
			"Establishing secure connection...",
			"Authentication: SUCCESS",
			"Access granted to mainframe",
		},
	},
	{
		ID: "hashgen", Name: "Hash Generator", Command: "hashgen --algo sha256",
		Output: []string{
			"Generating hash...",
			"SHA-256: 5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
			"Hash generation complete",
		},
	},
	{
		ID: "netmon", Name: "Network Monitor", Command: "netmon --sniff",
		Output: []string{
			"Starting packet sniffer...",
			"Capturing packets on interface eth0",
			"192.168.1.1 -> 192.168.1.100 [TCP]",
		},
	},
	{
		ID: "qrcode", Name: "QR Generator", Command: `qrgen --data "CYBER JINN"`,
		Output: []string{
			"Encoding data to QR code...",
			"QR code generated successfully",
			"Saved to: /tmp/qrcode.png",
		},
	},
	{
		ID: "ipinfo", Name: "IP Lookup", Command: "ipinfo --lookup",
		Output: []string{
			"Fetching IP information...",
			"IP: 203.0.113.42",
			"Location: Mumbai, India",
		},
	},
	{
		ID: "wificrack", Name: "WiFi Cracker", Command: "wificrack --target AP_5G",
		Output: []string{
			"Initiating WPA2 decryption...",
			"Capturing handshake packets...",
			"Decryption in progress...",
		},
	},
}

// Tools returns the hacker-lab cards in display order.
func Tools() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}

func LookupTool(id string) (Tool, error) {
	for _, t := range tools {
		if t.ID == id {
			return t, nil
		}
	}
	return Tool{}, fmt.Errorf("%w: %q", ErrUnknownTool, id)
}

// RunTool returns the terminal transcript for id: the prompt line, the
// tool output and a trailing cursor. Unknown ids run the default tool.
func RunTool(id string) []string {
	t, err := LookupTool(id)
	if err != nil {
		t, _ = LookupTool(DefaultTool)
	}
	lines := make([]string, 0, len(t.Output)+2)
	lines = append(lines, Prompt+" "+t.Command)
	lines = append(lines, t.Output...)
	return append(lines, Cursor)
}
