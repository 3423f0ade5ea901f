// Package files resolves the Firebase Analytics CSV exports that make up a
// project dataset.
//
// Exports land on disk with unpredictable naming: Firebase appends a numeric
// suffix per download ("Events_Event_name1.csv", "Events_Event_name2.csv")
// and the case of the base name is not guaranteed. The Locator hides that
// variability behind logical dataset names.
//
// Example usage:
//
//	locator := files.NewLocator("/path/to/data")
//
//	// Resolve the events export for one project folder
//	path, err := locator.LocateNumbered("myproject", files.EventsPattern)
//
//	// Check a folder contains a complete dataset
//	if locator.ValidDataset("myproject") {
//	    // Process folder
//	}
package files
