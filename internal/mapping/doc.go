// Package mapping provides the YAML schema for record layout files, with
// parsing, writing and structural validation.
//
// A layout file declares streams. Each stream names its format and tokenizer
// settings and lists the records it may contain; each record is a tree of
// fields and segments. Positions and sizes left out of the file are computed
// later by the layout compiler.
//
// # Schema Overview
//
//	version: "1"
//	streams:
//	  - name: orders
//	    format: csv              # csv, delimited or fixedlength
//	    encoding: ISO-8859-1     # optional IANA charset name
//	    parser:
//	      delimiter: ","
//	      comments: ["#"]
//	    records:
//	      - name: header
//	        fields:
//	          - name: type
//	            rid: true
//	            literal: H
//	          - name: count
//	            type: int
//	      - name: detail
//	        fields:
//	          - name: type
//	            rid: true
//	            literal: D
//	          - name: itemCount
//	            type: int
//	          - name: items         # a segment: it has fields
//	            occursRef: itemCount
//	            fields:
//	              - name: sku
//	              - name: qty
//	                type: int
//
// # Fixed-length fields
//
// Fixed-length fields need a length, and may be padded:
//
//	- name: amount
//	  length: 10
//	  padding: "0"
//	  justify: right
//
// A single field or segment per record may be of indeterminate size, using
// "length: unbounded" or "maxOccurs: unbounded"; the fields after it are then
// located from the end of the record.
//
// # Property paths
//
// occursRef names a field of the same record by its dotted path from the
// record, for example "header.count".
package mapping
