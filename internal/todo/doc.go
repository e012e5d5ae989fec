// Package todo holds the task store: its data model, operations, codecs and
// the grouped listing.
//
// The store file (data.json by default) follows the schema returned by
// BundledSchema:
//
//	{
//	  "tasks": [
//	    {
//	      "id": 0,
//	      "content": "Buy milk",
//	      "resolved": false,
//	      "project": "",
//	      "group": "home"
//	    }
//	  ],
//	  "groups": ["home"],
//	  "projects": [
//	    {"name": "Core", "tag": "core", "description": "Core platform"}
//	  ]
//	}
//
// # Task Ids
//
// A new task gets the last task's id plus one, or 0 in an empty list. Ids are
// never reused while tasks remain; ClearTasks removes every task at once.
// AddTask fails with ErrIDOverflow rather than wrapping past math.MaxInt64.
//
// # Groups
//
// Groups is an ordered set of labels in first-seen order. Clearing tasks
// leaves it untouched. The listing renders one block per label, then an
// "ungrouped" block. Tasks whose label is missing from Groups are listed in
// the ungrouped block and reported through ListOptions.OnOrphan.
//
// # Decoding
//
// Decode never substitutes a default. Callers that want an empty store on
// failure check for *DecodeError and use NewData themselves. JSON input may
// carry // and /* */ comments and trailing commas. Files ending in .yaml or
// .yml use the YAML codec, which validates against the same schema.
//
// # File Format
//
// When writing JSON stores, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Empty arrays instead of null
package todo
