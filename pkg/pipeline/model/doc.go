// Package model provides the data structures shared by the pipeline package
// and its options. It defines stage descriptors, trace events, and the option
// interface that lets collaborators observe stage execution.
package model
