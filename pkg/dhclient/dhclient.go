// Copyright 2025 the lumonode Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dhclient brings up wired interfaces over DHCP. It is the
// fallback path for devices racked with an ethernet cable instead of
// Wi-Fi.
package dhclient

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/u-root/u-root/pkg/dhclient"
	"github.com/vishvananda/netlink"
)

const (
	packetTimeout = 10 * time.Second
	retries       = 3
)

// Wireless reports whether the named interface is a wireless device.
func Wireless(name string) bool {
	_, err := os.Stat(filepath.Join("/sys/class/net", name, "wireless"))
	return err == nil
}

// WiredLinks returns the links matching pattern that DHCP can
// reasonably configure, leaving out loopback and wireless devices.
func WiredLinks(pattern string) ([]netlink.Link, error) {
	re, err := regexp.CompilePOSIX(pattern)
	if err != nil {
		return nil, fmt.Errorf("Fail to parse interface pattern %s: %v", pattern, err)
	}
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("Fail to get list of link names: %v", err)
	}
	return filterWired(re, links), nil
}

func filterWired(re *regexp.Regexp, links []netlink.Link) []netlink.Link {
	var wired []netlink.Link
	for _, link := range links {
		attrs := link.Attrs()
		if attrs.Flags&net.FlagLoopback != 0 {
			continue
		}
		if !re.MatchString(attrs.Name) {
			continue
		}
		if Wireless(attrs.Name) {
			continue
		}
		wired = append(wired, link)
	}
	return wired
}

// Request runs DHCP on every wired interface matching pattern and
// reports progress on cl. It returns as soon as the requests are under
// way; cl is closed once every interface has been tried.
func Request(pattern string, verbose bool, cl chan string) {
	links, err := WiredLinks(pattern)
	if err != nil {
		cl <- err.Error()
		close(cl)
		return
	}
	if len(links) == 0 {
		cl <- fmt.Sprintf("No wired interfaces match %s", pattern)
		close(cl)
		return
	}
	go configureAll(links, verbose, cl)
}

func configureAll(ifs []netlink.Link, verbose bool, cl chan<- string) {
	ctx, cancel := context.WithTimeout(context.Background(), packetTimeout*time.Duration(1<<uint(retries)))
	defer cancel()

	c := dhclient.Config{
		Timeout: packetTimeout,
		Retries: retries,
	}
	if verbose {
		c.LogLevel = dhclient.LogSummary
	}
	// The wizard only ever needs IPv4; the activation API and the
	// connectivity probe both sit behind IPv4 endpoints.
	r := dhclient.SendRequests(ctx, ifs, true, false, c, 30*time.Second)

	defer close(cl)

	for {
		select {
		case <-ctx.Done():
			cl <- fmt.Sprintf("Done with dhclient: %v", ctx.Err())
			return

		case result, ok := <-r:
			if !ok {
				cl <- "Finished configuring interfaces"
				return
			}
			if result.Err != nil {
				cl <- fmt.Sprintf("Could not configure %s: %v", result.Interface.Attrs().Name, result.Err)
			} else if err := result.Lease.Configure(); err != nil {
				cl <- fmt.Sprintf("Could not configure %s: %v", result.Interface.Attrs().Name, err)
			} else {
				cl <- fmt.Sprintf("Configured %s with %s", result.Interface.Attrs().Name, result.Lease)
			}
		}
	}
}
