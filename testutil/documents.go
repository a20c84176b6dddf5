package testutil

// SampleDocuments are JSON documents exercising every kind of the value model.
var SampleDocuments = []string{
	`{"name": "bob", "age": 42, "score": -1.5, "tags": ["b", "c"], "active": true}`,
	`{"name": "alice", "age": 31, "score": 12.25, "tags": ["a"], "active": false}`,
	`{"name": "carol", "age": 31, "score": -1.12, "tags": [], "active": null}`,
	`{"name": "dave", "age": 7, "score": 100, "tags": ["a", "b"]}`,
	`{"name": "barbara", "age": 58.5, "score": 0, "tags": ["a", "b", "c"], "active": true}`,
}
