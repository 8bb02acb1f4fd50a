/*
Package domain contains the core models of the troubleshooting wizard.

It defines the static decision trees (Nodes, Options and terminal Results) and
the per-session navigation State. This package is kept pure and free of I/O so
the same models can back the HTTP API, the terminal runner and the MCP server.

# Key Entities

  - Tree: the complete, static set of Nodes for one equipment category.
  - Node: a single question screen with ordered Options.
  - Option: a selectable answer that either continues to another Node or concludes with a Result.
  - Result: a terminal diagnosis record.
  - State: the session snapshot (selected category, current node, history, active result).
  - View: what a front end should display for a given State.
*/
package domain
