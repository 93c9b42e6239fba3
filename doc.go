// Package passcheck estimates password quality. It resolves a strength tier
// under configurable requirements, estimates entropy and crack time, flags
// keyboard, sequence, repeat and date patterns, looks passwords up in
// common-password lists and generates random passwords.
//
// All estimators are pure functions of their input and safe for concurrent
// use. Wordlists caches lists loaded from a WordlistSource.
package passcheck
