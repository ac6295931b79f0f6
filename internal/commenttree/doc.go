// Package commenttree locates and grows nodes of a posting's comment tree.
//
// A tree is searched in pre-order: each root is checked before its replies,
// and the replies of an earlier sibling before any later sibling. Searches use
// an explicit stack, so arbitrarily deep reply chains are safe to walk. There is
// no index; every lookup costs O(size of tree) in the worst case.
//
// Functions here mutate the tree in memory only. Persisting the result is the
// caller's job.
package commenttree
