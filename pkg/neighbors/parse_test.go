package neighbors

import (
	"strings"
	"testing"
)

type wantDevice struct {
	ip  string
	mac string
}

func assertDevices(t *testing.T, got []Device, want []wantDevice) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d devices, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i].IP.String() != want[i].ip {
			t.Errorf("device %d IP = %s, want %s", i, got[i].IP, want[i].ip)
		}
		if got[i].MAC != want[i].mac {
			t.Errorf("device %d MAC = %q, want %q", i, got[i].MAC, want[i].mac)
		}
	}
}

func TestParseTable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []wantDevice
	}{
		{
			name:  "single device line",
			input: "192.168.1.1   AA-BB-CC-DD-EE-FF   dynamic\n",
			want:  []wantDevice{{"192.168.1.1", "AA-BB-CC-DD-EE-FF"}},
		},
		{
			name: "full windows output with headers",
			input: "Interface: 192.168.1.100 --- 0xa\n" +
				"  Internet Address      Physical Address      Type\n" +
				"  192.168.1.1           aa-bb-cc-dd-ee-ff     dynamic\n" +
				"  192.168.1.50          11-22-33-44-55-66     dynamic\n" +
				"  192.168.1.255         ff-ff-ff-ff-ff-ff     static\n",
			want: []wantDevice{
				{"192.168.1.1", "aa-bb-cc-dd-ee-ff"},
				{"192.168.1.50", "11-22-33-44-55-66"},
				{"192.168.1.255", "ff-ff-ff-ff-ff-ff"},
			},
		},
		{
			name: "duplicates preserved in order",
			input: "  10.0.0.2   aa-bb-cc-dd-ee-01   dynamic\n" +
				"  10.0.0.3   aa-bb-cc-dd-ee-02   dynamic\n" +
				"  10.0.0.2   aa-bb-cc-dd-ee-01   dynamic\n",
			want: []wantDevice{
				{"10.0.0.2", "aa-bb-cc-dd-ee-01"},
				{"10.0.0.3", "aa-bb-cc-dd-ee-02"},
				{"10.0.0.2", "aa-bb-cc-dd-ee-01"},
			},
		},
		{
			name:  "colon separated MAC accepted",
			input: "  10.0.0.9   aa:bb:cc:dd:ee:ff   dynamic\n",
			want:  []wantDevice{{"10.0.0.9", "aa:bb:cc:dd:ee:ff"}},
		},
		{
			name:  "numerically invalid IP dropped",
			input: "  999.999.999.999   aa-bb-cc-dd-ee-ff   dynamic\n",
		},
		{
			name:  "malformed MAC token dropped",
			input: "  192.168.1.4   not-a-mac   dynamic\n",
		},
		{
			name:  "line with only an IP dropped",
			input: "  192.168.1.4\n",
		},
		{
			name:  "header and blank lines yield nothing",
			input: "\nInterface: 10.0.0.1 --- 0x4\n  Internet Address      Physical Address      Type\n\n",
		},
		{
			name:  "empty input",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTable(strings.NewReader(tt.input))
			assertDevices(t, got, tt.want)
		})
	}
}

func TestParseDarwinTable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []wantDevice
	}{
		{
			name: "named and unnamed hosts",
			input: "router.local (192.168.1.1) at aa:bb:cc:dd:ee:ff [ethernet] on en0\n" +
				"? (192.168.1.77) at 11:22:33:44:55:66 on en0 ifscope [ethernet]\n",
			want: []wantDevice{
				{"192.168.1.1", "aa:bb:cc:dd:ee:ff"},
				{"192.168.1.77", "11:22:33:44:55:66"},
			},
		},
		{
			name:  "incomplete entry dropped",
			input: "? (192.168.1.200) at (incomplete) on en0 ifscope [ethernet]\n",
		},
		{
			name:  "garbage line dropped",
			input: "not an arp line at all\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDarwinTable(strings.NewReader(tt.input))
			assertDevices(t, got, tt.want)
		})
	}
}
