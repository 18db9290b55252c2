// Package io reads and writes chart datasets.
//
// # Formats
//
// A dataset is a [diagram.Diagram] stored as JSON, YAML or TOML. All three
// formats share the same shape:
//
//	{
//	  "root": {"label": "Bronze", "completion_ratio": 0.53, "color": "#CD7F32"},
//	  "categories": [
//	    {
//	      "name": "Energy",
//	      "leaves": [
//	        {"text": "Annual energy statistics", "status": "completed"},
//	        {"text": "Replace lighting", "status": "incomplete"}
//	      ]
//	    }
//	  ]
//	}
//
// Status must be one of completed, priority or incomplete. Unknown fields are
// rejected so typos surface instead of being silently dropped.
//
// # Import
//
// Use [Import] to read a file, picking the format from its extension, or
// [Read] to decode from any io.Reader. Import also validates the dataset with
// [diagram.Diagram.Validate]; Read only decodes.
//
//	d, err := io.Import("bronze.yaml")
//	if err != nil {
//	    return err
//	}
//
// # Export
//
// [Write] and [Export] encode a dataset in any format. Output re-imports to an
// equal Diagram.
package io
