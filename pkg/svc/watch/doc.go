// Package watch turns a cluster watch into a stream of snapshots.
//
// A Feed produces snapshots; ListWatchFeed lists the target and then reads
// its watch stream one event at a time. The Bridge pulls from a feed, exports
// each snapshot inline when configured and forwards it to a bounded channel
// read by a single consumer. A full channel or a slow export stops the feed
// from reading the stream.
package watch
