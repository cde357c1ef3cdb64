// Package hltv implements the record extractor: it turns fetched HLTV
// documents into match records via goquery selectors. Listing
// extraction yields candidate records with a stable identity key
// (the numeric match id from the result link); detail and player-stat
// extraction serve the enrichment pass.
package hltv
