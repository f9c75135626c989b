// Package mol provides the molecular containers for rigid-body conformer
// searches.
//
// The package defines the fundamental types the search engine operates on:
//
//   - [Atom], [Bond]: immutable topology records
//   - [Molecule]: one rigid body, an ordered atom list plus an N×3
//     position matrix
//   - [SupraMolecule]: a host plus one or more guests sharing a single
//     concatenated position matrix
//   - [Potential]: the energy function interface the engine scores with
//
// All transforms are value-semantic: WithDisplacement, WithPositionMatrix
// and Transformed return new containers and never alias the position
// matrix of their receiver. The engine relies on this to hand consumers
// immutable conformer snapshots.
//
// Distances between atoms within one component never change under any
// transform this package offers; bodies are rigid by construction.
package mol
