// Package ratelimit provides simple request pacing for serial scraping.
//
// The harvester issues one request at a time; the Interval limiter
// spaces consecutive requests by a fixed delay so the remote listing
// is not hammered between pages or detail fetches.
package ratelimit
