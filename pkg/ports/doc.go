/*
Package ports defines the driven ports (interfaces) of the troubleshooting wizard.

These interfaces decouple the navigator from external implementations, allowing
the same engine to work with various tree sources and session storage backends.

# Key Interfaces

  - TreeSource: loads the decision trees (embedded YAML, a directory, Loam or memory).
  - StateStore: persists and loads session State.
  - DistributedLocker: coordinates concurrent access to one session across replicas.
  - Wizard: the operations a front end (HTTP, MCP, terminal) drives.
*/
package ports
