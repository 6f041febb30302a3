// Package resp implements the RESP2 wire format.
//
// The codec is split into a streaming Parser, which decodes frames from an
// append-only byte buffer fed from a socket, and a Writer, which serializes
// reply frames into an output buffer that the connection flushes in one
// write. Frames returned by the Parser alias its internal buffer and are
// valid until the next call to Feed; callers that retain frame payloads
// must copy them.
//
// Inline commands (space-separated tokens terminated by CRLF) are accepted
// for telnet-style interaction and surface as an array of bulk strings,
// the same shape a standard client sends.
package resp
