// Copyright 2025 the lumonode Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dhclient

import (
	"net"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/vishvananda/netlink"
)

type fakeLink struct {
	attrs netlink.LinkAttrs
}

func (f *fakeLink) Attrs() *netlink.LinkAttrs { return &f.attrs }
func (f *fakeLink) Type() string              { return "device" }

func TestFilterWired(t *testing.T) {
	// Names are chosen so that none exists under /sys/class/net, which
	// keeps the wireless check out of the picture.
	links := []netlink.Link{
		&fakeLink{attrs: netlink.LinkAttrs{Name: "lo17", Flags: net.FlagLoopback | net.FlagUp}},
		&fakeLink{attrs: netlink.LinkAttrs{Name: "net17", Flags: net.FlagUp}},
		&fakeLink{attrs: netlink.LinkAttrs{Name: "net18"}},
		&fakeLink{attrs: netlink.LinkAttrs{Name: "veth17"}},
	}

	for _, tt := range []struct {
		name    string
		pattern string
		want    []string
	}{
		{
			name:    "match_all_skips_loopback",
			pattern: ".*",
			want:    []string{"net17", "net18", "veth17"},
		},
		{
			name:    "match_prefix",
			pattern: "^net",
			want:    []string{"net17", "net18"},
		},
		{
			name:    "match_none",
			pattern: "^wwan",
			want:    nil,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			re := regexp.MustCompilePOSIX(tt.pattern)
			var got []string
			for _, link := range filterWired(re, links) {
				got = append(got, link.Attrs().Name)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Incorrect value for filtered links. got: %v, want: %v", got, tt.want)
			}
		})
	}
}

func TestWirelessUnknownInterface(t *testing.T) {
	if Wireless("nosuchif99") {
		t.Errorf("Incorrect value for Wireless. got: true, want: false")
	}
}

func TestRequestNoMatch(t *testing.T) {
	cl := make(chan string, 2)
	Request("nosuchif99", false, cl)

	var got []string
	for msg := range cl {
		got = append(got, msg)
	}
	if len(got) != 1 || !strings.Contains(got[0], "No wired interfaces match") {
		t.Errorf("Incorrect value for messages. got: %v", got)
	}
}

func TestRequestBadPattern(t *testing.T) {
	cl := make(chan string, 2)
	Request("[", false, cl)

	var got []string
	for msg := range cl {
		got = append(got, msg)
	}
	if len(got) != 1 || !strings.Contains(got[0], "Fail to parse interface pattern") {
		t.Errorf("Incorrect value for messages. got: %v", got)
	}
}
