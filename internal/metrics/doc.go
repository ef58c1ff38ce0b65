// Package metrics records the distribution of computed respiratory scores and
// renders it in the Prometheus text exposition format.
//
// Recorder is updated by the batch engine after every scored cohort.
// Families converts a Distribution snapshot into client_model metric families,
// and Write encodes them with expfmt.
package metrics
