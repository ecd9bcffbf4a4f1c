// Package oeclassic reads OE Classic mail archives.
//
// An archive is a .mbx file of framed RFC 822 records with a SQLite
// index (.db) of the same name beside it. The reader walks the .mbx
// records for message bodies and queries the index for mailbox
// statistics.
//
// Record framing: a "[hdr]" line, an "mlen=<hex>" line giving the
// message length, a "[msg]" line, then exactly mlen bytes of raw
// RFC 822 message. Anything between records is skipped.
package oeclassic
