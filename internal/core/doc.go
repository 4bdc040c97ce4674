// Package core provides the housing analysis: loading building records,
// classifying them by height and aggregating the results.
//
// The package has no UI or transport dependencies; the CLI and the web
// server both drive it through [Service].
//
// # Pipeline
//
//  1. Load: a [Source] reads rows and coerces them into [House] records
//     ([LoadCSV], [LoadRows]). The first bad field aborts with a *[FormatError].
//  2. Classify: [Classify] maps each floor count to a [Category]
//     (Low-rise 1-5, Mid-rise 6-16, High-rise 17+).
//  3. Aggregate: [Tally] counts categories and [MinAreaPerResident] finds
//     the house with the least residential area per resident.
//
// [BuildReport] runs steps 2 and 3; [Service.AnalyzeSource] runs all three
// and stamps the result with a run ID.
//
// # Error Handling
//
// Each failure has a sentinel kind for errors.Is: [ErrFormat],
// [ErrNotInteger], [ErrNotPositive], [ErrEmptyInput] and [ErrZeroPopulation].
// Nothing is recovered internally. [MapError] converts any of them to a
// [UserMessage] with a support code (VAL, CLS, AGG, FILE, SRC).
package core
