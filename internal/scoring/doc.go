// Package scoring turns a feature vector into a calibrated 0-100 quality
// score with a label, a confidence estimate, optional per-factor
// explanations, and detected defect tags. Scoring never fails: with rich
// evidence it uses the weighted heuristic, and with an empty vector it
// degrades to a low-confidence metadata estimate.
package scoring
