// Copyright 2025 the lumonode Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
)

// netlinkAddress walks the kernel's address tables the way ip -4 addr
// show does, skipping loopback, and returns the first private IPv4.
func netlinkAddress() (string, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return "", fmt.Errorf("Fail to list interfaces: %v", err)
	}
	for _, link := range links {
		if link.Attrs().Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := netlink.AddrList(link, netlink.FAMILY_V4)
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			if addr.IP.IsPrivate() {
				return addr.IP.String(), nil
			}
		}
	}
	return "", fmt.Errorf("no private IPv4 address found")
}
