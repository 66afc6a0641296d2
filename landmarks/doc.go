// Package landmarks chooses, for every connected component of a star graph,
// the small set of landmark stars whose shortest-path trees make ALT lower
// bounds useful.
//
// Schemes:
//
//   - q, r, s: the stars with the largest and then the smallest axial
//     coordinate (two slots).
//   - wtn: the star with the largest world-trade-number (one slot).
//   - triaxial: coordinate extremes (3 or 6 of them), an optional
//     high-traffic pick, then "avoid" picks until the component's quota is
//     met. The avoid phase grows a forest.ApproximateForest one tree at a
//     time, so each pick sees the bounds of all earlier ones.
//
// A component of n ≥ 2 stars earns min(MaxSlots(routeReuse),
// ceil(k·log10 n)) landmarks under the triaxial scheme, k being 2.5 for three
// seeds and 2 for six. Singleton components never get a landmark.
//
// Every scheme is deterministic: ties are broken by scan order (index order
// for the simple schemes, WTN-descending then index order for triaxial).
//
// The avoid helper functions CalcWeights, CalcSizes and TraverseSizes are
// exported for reuse and testing; they have no state.
package landmarks
