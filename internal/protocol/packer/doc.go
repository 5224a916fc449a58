// Package packer builds and parses the prefix-tagged wire formats on
// top of the envelope codec.
//
// Three formats exist, each a prefix followed by base64 of a JSON body:
//
//	E2EE1:  single envelope
//	E2EED1: dual — {to, me}, the peer's copy and the sender's own copy
//	E2EEG1: group — {env: [{uid, box}, ...]}, one envelope per member
//
// Dual and group bodies nest complete single wire strings, so unpacking
// is a pure inverse that performs no crypto. Parsing is strict: unknown
// or missing fields reject the whole string.
package packer
