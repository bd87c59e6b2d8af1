// Package loader reads statement definitions from YAML, TOML, CUE or JSON files
// and replays them as builder calls.
//
// A definition file holds a list of named statements:
//
//	statements:
//	  - name: recent_orders
//	    kind: select
//	    table: orders
//	    where:
//	      - {column: status, op: in, operands: [paid, shipped]}
//	      - group: OR
//	        items:
//	          - {cond: "created_at > ?", params: ["2024-01-01"]}
//	          - {column: total, op: ">=", operands: [100]}
//	    order_by: [created_at DESC]
//	    limit: 20
//
// CUE and JSON files are unified with an embedded schema first, so type and
// enum mistakes are reported with their source position. YAML and TOML
// files are decoded strictly: unknown fields are errors.
package loader
