// Package harness runs store scenarios written in YAML.
//
// A scenario instantiates a fresh store, runs a sequence of insert and
// select steps against it through the engine, checks each step's
// expectation and finally evaluates assertions on the trace and the store
// usage.
//
// # Scenario Format
//
//	name: catalog
//	description: "Datasets joined with their publishers"
//	owner: alice
//	backend: sqlite            # memory (default) or sqlite
//	limits:
//	  max_query_limit: 10
//	default_query_limit: 5
//	steps:
//	  - insert:
//	      sender: alice
//	      format: turtle
//	      file: ../data/catalog.ttl   # relative to the scenario file
//	    expect:
//	      count: 5
//	  - select:
//	      query:
//	        select: [s]
//	        where:
//	          - subject: { variable: s }
//	            predicate: { named_node: { full: "http://purl.org/dc/terms/title" } }
//	            object: { variable: t }
//	    expect:
//	      bindings:
//	        - s: "<https://example.org/dataset/ds1>"
//	  - select:
//	      query: { ... }
//	    expect:
//	      error: unknown_prefix
//	assertions:
//	  - type: final_stat
//	    count: 5
//	  - type: trace_count
//	    action: insert
//	    outcome: ok
//	    count: 1
//
// A step without expect must succeed. Select queries use the same JSON
// shape as semstore select, written as YAML.
//
// # Golden Files
//
// RunWithGolden compares the scenario trace, including every select
// response, with testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
