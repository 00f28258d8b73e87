// Copyright (c) 2021 Silvano DAL ZILIO
//
// GNU Affero GPL v3

/*
Package netfile reads Time Petri Nets from the textual description format
used in the Tina toolbox (see below) into this engine's model.Net.

The net format

We support a very general subset of the description format for Time Petri nets
found in the Tina man pages (see
http://projects.laas.fr/tina/manuals/formats.html). We explain some of our
restrictions below.

A net is described by a series of declarations of places, transitions,
priorities  and/or notes, and an optional naming declaration for the net. The
net described is the superposition of these declarations. The grammar of .net
declarations is the following, in which nonterminals are bracketed by < .. >,
terminals are in upper case or quoted. Spaces, carriage return and tabs act as
separators.

Labels may be (optionally) assigned to places and transitions, but we do not
support the use of a "lb" declaration, for labels, that was only kept for
backward compatibility. We also do not support stopwatches and reset arcs.

Grammar

    .net                    ::= (<trdesc>|<pldesc>|<lbdesc>|<prdesc>|<ntdesc>|<netdesc>)*
    netdesc                 ::= ’net’ <net>
    trdesc                  ::= ’tr’ <transition> {":" <label>} {<interval>} {<tinput> -> <toutput>}
    pldesc                  ::= ’pl’ <place> {":" <label>} {(<marking>)}
    ntdesc                  ::= ’nt’ <note> (’0’|’1’) <annotation>
    prdesc                  ::= ’pr’ (<transition>)+ ("<"|">") (<transition>)+
    interval                ::= (’[’|’]’)INT’,’INT(’[’|’]’) | (’[’|’]’)INT’,’w[’
    tinput                  ::= <place>{<arc>}
    toutput                 ::= <place>{<normal_arc>}
    arc                     ::= <normal_arc> | <test_arc> | <inhibitor_arc>
    normal_arc              ::= ’*’<weight>
    test_arc                ::= ’?’<weight>
    inhibitor_arc           ::= ’?-’<weight>
    weight, marking         ::= INT{’K’|’M’|’G’|’T’|’P’|’E’}
    net, place, transition,
    label, note, annotation ::= ANAME | ’{’QNAME’}’
    INT                     ::= unsigned integer
    ANAME                   ::= alphanumeric name, see Notes below
    QNAME                   ::= arbitrary name, see Notes below

Notes

Two forms are admitted for net, place and transition names:

     - ANAME : any non empty string of letters, digits, primes (’) and underscores (_)

     - ’{’QNAME’}’ : any chain between braces, and in which the three characters "{,}, or \" are escaped with a \

Empty lines and lines beginning with ’#’ are considered comments.

In any closed temporal interval [eft,lft], one must have eft <= lft.

Weight is optional for normal arcs, but mandatory for test and inhibitor arcs.

By default: transitions have temporal interval [0,w[; normal arcs have weight 1;
places have marking 0; and transitions have the empty label "{}".

When several labels are assigned to some node, only the last assigned is kept.

Every place parsed this way is also declared as a discrete variable in the
returned Context, at the same index as in the returned Net's place list, so
a query can refer to a place's marking by name.
*/
package netfile
